/*
Package domain contains the core value types of the abacus calculator.

It defines the fundamental entities of a calculation and the error taxonomy
shared by every surface. This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - Operator: The closed set of binary operators (+ - * /). The zero value is invalid.
  - Expression: Two operands and an operator, produced by the tokenizer.
  - Result: A successful calculation with its fixed five-decimal rendering.
  - ParseError: Why an input line could not be tokenized.
  - LifecycleHooks: Callbacks fired after every calculation.
*/
package domain
