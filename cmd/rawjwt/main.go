// Command rawjwt decodes, edits, re-signs and forges compact JWTs without
// validating them.
//
//	rawjwt decode <token>
//	rawjwt set <token> --payload sub=admin
//	rawjwt sign <token> --alg HS256 --secret supersecret
//	rawjwt tamper none <token>
//
// A token argument of "-" is read from standard input.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
