package main

import "github.com/packwright/packwright/cmd"

func main() {
	cmd.Execute()
}
