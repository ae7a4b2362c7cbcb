package main

import "framelink/cmd"

func main() {
	cmd.Execute()
}
