// Package raw gives full, unvalidated access to the three segments of a
// compact JSON Web Token: the header JSON, the payload JSON and the raw
// signature bytes.
//
// Unlike the jwt packages most applications should use, nothing here
// checks that a token is authentic, that its claims make sense, or that
// the algorithm declared in the header matches the one used to sign it.
// The three segments are independent: editing the payload leaves the
// signature exactly as it was until CalculateAndSetSignature is called.
// That is what makes the package useful for building tampered, unsigned
// and algorithm-confused tokens in security tests.
//
// # Example
//
//	token, err := raw.Parse(input)
//	if err != nil {
//		return err
//	}
//
//	if err := token.SetPayloadField("sub", "admin"); err != nil {
//		return err
//	}
//
//	fmt.Println(token) // same signature, different payload
//
// Recoverable problems, such as a segment that is not valid UTF-8 or a
// JSON tree that cannot be parsed, are reported to a diag.Sink rather than
// returned, so a hostile token can still be inspected.
package raw
