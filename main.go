package main

import "github.com/theirongolddev/julmat/cmd"

func main() {
	cmd.Execute()
}
