package main

import "github.com/binhbb2204/Business-Directory-Group13/cli"

func main() {
	cli.Execute()
}
