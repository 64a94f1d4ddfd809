package main

import "github.com/placepix/placepix/cmd/placepix/cmd"

func main() {
	cmd.Execute()
}
