// Package mock provides test doubles for the ai package interfaces.
//
// # Usage in Tests
//
//	// Fixed reply
//	gen := mock.NewMockGenerator(`{"contract_type":"NDA","search_queries":["nda example"]}`)
//
//	// Every call fails
//	gen := mock.NewFailingGenerator(errors.New("quota exceeded"))
//
//	// Reply depends on the prompt
//	gen := mock.NewMockGenerator("").
//	    WithGenerateFunc(func(ctx context.Context, prompt string) (string, error) {
//	        return "[]", nil
//	    })
//
//	// Assertions
//	count := gen.CallCount()
//	prompts := gen.Prompts()
package mock
