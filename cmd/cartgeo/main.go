package main

import "github.com/reloadkit/cartgeo/cmd/cartgeo/cmd"

func main() {
	cmd.Execute()
}
