package domain

// Book is an uploaded document
type Book struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// BookContent is a book together with its raw text
type BookContent struct {
	Book    Book   `json:"book"`
	Content string `json:"content"`
}
