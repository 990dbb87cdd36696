// Package generator runs the external documentation generator (Doxygen by
// default) over the converted header stubs.
//
// Callers check the generator before converting anything, so a missing
// executable fails fast, and run it only after every output is on disk:
//
//	gen := generator.New("doxygen", logger)
//	if err := gen.Check(ctx); err != nil {
//	    return err // errors.Is(err, generator.ErrGeneratorNotFound)
//	}
//	// ... convert ...
//	err := gen.Run(ctx, "Doxyfile", "")
package generator
