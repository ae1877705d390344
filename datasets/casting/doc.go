// Package casting provides a small show to cast: applicants with criteria
// marks, roles requiring some of the criteria, and the weights a director
// uses to rank applicants. It is the demo domain of the casting commands and
// the fixture of the engine tests.
package casting
