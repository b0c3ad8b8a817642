package main

import "github.com/jj-sm/html2wikijs/cmd"

func main() {
	cmd.Execute()
}
