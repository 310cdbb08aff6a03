// Package value defines the runtime values of the template language.
//
// A [Value] holds exactly one [Kind]: a number, text, boolean, date,
// sequence, mapping, or the empty value. Every number is a float64, so
// templates never distinguish integers from reals; integral numbers print
// without a fractional part.
//
// Go values enter the language through [Of] and leave it through
// [Value.Native]. Literal text is parsed by the [Recognizer] functions
// returned from [Recognizers], which delegate nested elements back to an
// [Evaluator].
package value
