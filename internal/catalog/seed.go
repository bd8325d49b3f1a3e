package catalog

import "github.com/XSaadiX/Quiz-app/internal/question"

// Seed returns the built-in catalog used when no catalog file is configured.
func Seed() *Catalog {
	mc := question.KindMultipleChoice
	tf := question.KindTrueFalse
	return &Catalog{
		Title: "General Knowledge",
		Questions: []question.Spec{
			{ID: 1, Type: mc, Category: "geography", Text: "What is the capital of Australia?",
				Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, CorrectAnswer: "Canberra"},
			{ID: 2, Type: tf, Category: "geography", Text: "The Nile flows into the Mediterranean Sea.",
				CorrectAnswer: question.True},
			{ID: 3, Type: mc, Category: "science", Text: "Which planet has the shortest year?",
				Options: []string{"Mercury", "Venus", "Mars", "Jupiter"}, CorrectAnswer: "Mercury"},
			{ID: 4, Type: tf, Category: "science", Text: "Sound travels faster in air than in water.",
				CorrectAnswer: question.False},
			{ID: 5, Type: mc, Category: "science", Text: "What is the chemical symbol for sodium?",
				Options: []string{"S", "So", "Na", "Sd"}, CorrectAnswer: "Na"},
			{ID: 6, Type: mc, Category: "history", Text: "In which year did the Berlin Wall fall?",
				Options: []string{"1987", "1989", "1991", "1993"}, CorrectAnswer: "1989"},
			{ID: 7, Type: tf, Category: "history", Text: "The Great Pyramid of Giza was built before Stonehenge was completed.",
				CorrectAnswer: question.True},
			{ID: 8, Type: mc, Category: "computing", Text: "Which data structure serves elements in first-in, first-out order?",
				Options: []string{"Stack", "Queue", "Heap", "Tree"}, CorrectAnswer: "Queue"},
			{ID: 9, Type: tf, Category: "computing", Text: "A byte is made of eight bits.",
				CorrectAnswer: question.True},
			{ID: 10, Type: mc, Category: "computing", Text: "Which HTTP status code means \"Not Found\"?",
				Options: []string{"200", "301", "404", "500"}, CorrectAnswer: "404"},
			{ID: 11, Type: mc, Category: "mathematics", Text: "What is the smallest prime number?",
				Options: []string{"0", "1", "2", "3"}, CorrectAnswer: "2"},
			{ID: 12, Type: tf, Category: "mathematics", Text: "The sum of the angles of a triangle is 180 degrees.",
				CorrectAnswer: question.True},
		},
	}
}
