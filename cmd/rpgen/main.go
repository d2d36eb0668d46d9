package main

import "github.com/MeKo-Tech/rpgen/cmd/rpgen/cmd"

func main() {
	cmd.Execute()
}
