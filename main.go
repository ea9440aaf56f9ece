package main

import "github.com/junaidrashid-git/bookmarket-api/cmd"

func main() {
	cmd.Execute()
}
