/*
Package ports defines the driven ports (interfaces) for the abacus calculator.

These interfaces decouple the calculator from external implementations, allowing
the same pipeline to run with or without a result cache, in memory or on Redis.

# Key Interfaces

  - ResultCache: Memoizes successful calculations keyed by normalized input.
*/
package ports
