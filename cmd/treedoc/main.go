// Command treedoc assembles tree documents offline from journey files.
package main

import "github.com/treejer/ranger/backend/cmd/treedoc/command"

func main() {
	command.Execute()
}
