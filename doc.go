// Package zetacalc implements a calculator for expressions over complex
// numbers.
//
// Expressions are written in ordinary infix notation with the operators
// + - * / and ^, parentheses, complex literals like "3", "2.5i", and "i",
// variables, and two functions: conj(z), the complex conjugate, and
// raiz(z, n), the principal n-th root. "(2 + 3i) * z + raiz(16, 2)" is an
// expression with one variable, z. Exponents are truncated to integers.
//
// Parse an expression once, ask it which variables it needs with Vars, and
// evaluate it as many times as you like with Eval. Parsed expressions can
// also be drawn as a tree or written in prefix notation.
//
package zetacalc
