/*
Package grammar builds lifted matchers from grammar files.

A grammar file lists named rules, each written in a small expression
language. The expressions are themselves parsed with the lifted engine.

# File format

YAML:

	name: keyvalue
	start: document
	rules:
	  - name: document
	    expr: many(pair, "\n") eof
	  - name: pair
	    expr: text(key) ":" chomp(value)
	  - name: key
	    expr: until(": \t\n")
	  - name: value
	    expr: digits | text(until("\n"))

JSON files (.json) carry the same fields. When start is omitted the
first rule is the start rule.

# Expressions

  - "text": literal string. Escapes: \" \' \\ \n \t \r
  - 'c': single character; !'c': any character but c
  - ws, digits, eof: whitespace, decimal digits, end of input
  - any other identifier refers to a rule; rules may be recursive
  - a b c: sequence, yields a list of values
  - a | b: ordered alternation, first match wins
  - a*, a+, a?: zero or more, one or more, optional
  - many(a), many(a, ","), many1(a), many1(a, ","): repetition, optionally separated
  - option(a): optional, yields nothing when absent
  - chomp(a): optional whitespace before a; skip(a): required whitespace before a
  - until("chars"), while("chars"): runs of characters outside / inside the set
  - text(a): the value of a flattened to a single string

A sequence of a single element yields that element's value.

# Values

Literals, characters and character runs yield strings, sequences and
repetitions yield lists, and absent options and eof yield nil.
*/
package grammar
