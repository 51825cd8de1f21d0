package main

import "github.com/SikamikanikoBG/codelens/cmd"

func main() {
	cmd.Execute()
}
