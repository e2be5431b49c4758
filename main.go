package main

import "github.com/seucantinho/ms-go-reservations/cmd"

func main() {
	cmd.Execute()
}
