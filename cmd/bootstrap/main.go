// Command bootstrap inspects browser target selection and runs the bundle
// origin service.
package main

import "github.com/dmitrymomot/userflow-bootstrap/internal/cli"

func main() {
	cli.Execute()
}
