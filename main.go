package main

import "github.com/nikogura/portfolio-admin/cmd"

func main() {
	cmd.Execute()
}
