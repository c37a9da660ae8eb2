// Package designs provides concrete basis families for generator fitting:
// polynomials, sinusoid harmonics, gaussian bumps, cubic B-splines, a
// constant offset, and a Stack combinator that joins designs column-wise.
//
// Every type here implements generator.Design. Designs are immutable; all
// shape parameters are fixed at construction and validated there.
package designs
