package domain

// Interprete is a person who records translation videos.
type Interprete struct {
	// InterpreteID is the sheet key.
	InterpreteID int

	// TrechosIDs lists the fragments this interpreter has translated.
	// It only grows.
	TrechosIDs IDList
}
