package example

//desc # Example

//desc Go sources use the same markers.

//code
func Add(a, b int) int {
	return a + b
}
//code
