package main

import "github.com/theirongolddev/bburn/cmd"

func main() {
	cmd.Execute()
}
