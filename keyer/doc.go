// Package keyer provides deterministic string canonicalization used to decide
// whether two values denote the same entity by exact key match.
//
// Two keyers share one normalization pipeline (case folding, diacritic
// stripping, punctuation removal, whitespace collapsing):
//
//   - Fingerprint: sorted, de-duplicated word tokens ("Héllô, Wôrld!" -> "hello world")
//   - NGramFingerprint: sorted, de-duplicated character n-grams ("banana", 3 -> "anabannan")
//
// Keyers validate their parameter arity on every call. Use Bind to validate
// once up front and obtain an infallible key function:
//
//	fn, err := keyer.Bind(keyer.NGramFingerprint{}, 3)
//	if err != nil {
//	    return err
//	}
//	key := fn("banana")
package keyer
