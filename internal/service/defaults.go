package service

import "github.com/aliskhannn/flashcard-quiz-bot/internal/domain/entities"

// DefaultQuestions returns the built-in deck used when nothing else is available.
func DefaultQuestions() []entities.Question {
	return []entities.Question{
		{
			ID:       "default-01",
			Question: "What is the capital of France?",
			Options:  []string{"Paris", "London", "Berlin", "Madrid"},
			Answer:   "Paris",
		},
		{
			ID:       "default-02",
			Question: "What is a linked list?",
			Options: []string{
				"A data structure consisting of nodes, each containing data and a reference to the next node.",
				"A tree with two children per node",
				"A collection of key-value pairs",
				"A FIFO data structure",
			},
			Answer: "A data structure consisting of nodes, each containing data and a reference to the next node.",
		},
		{
			ID:       "default-03",
			Question: "What is a stack?",
			Options: []string{
				"A data structure that follows Last-In-First-Out (LIFO) principle.",
				"A data structure that follows First-In-First-Out (FIFO) principle.",
				"A graph",
				"A hash table",
			},
			Answer: "A data structure that follows Last-In-First-Out (LIFO) principle.",
		},
		{
			ID:       "default-04",
			Question: "What is a queue?",
			Options: []string{
				"A data structure that follows First-In-First-Out (FIFO) principle.",
				"A data structure that follows Last-In-First-Out (LIFO) principle.",
				"A tree",
				"A linked list",
			},
			Answer: "A data structure that follows First-In-First-Out (FIFO) principle.",
		},
		{
			ID:       "default-05",
			Question: "What is a binary search tree?",
			Options: []string{
				"A tree data structure in which each node has at most two children, and left < root < right.",
				"A hash table",
				"A queue",
				"A graph",
			},
			Answer: "A tree data structure in which each node has at most two children, and left < root < right.",
		},
		{
			ID:       "default-06",
			Question: "What is a graph?",
			Options: []string{
				"A collection of nodes (vertices) and edges connecting pairs of nodes.",
				"A stack",
				"A queue",
				"A binary tree",
			},
			Answer: "A collection of nodes (vertices) and edges connecting pairs of nodes.",
		},
		{
			ID:       "default-07",
			Question: "What is a hash table?",
			Options: []string{
				"A data structure that maps keys to values for highly efficient lookup.",
				"A FIFO data structure",
				"A stack",
				"A tree",
			},
			Answer: "A data structure that maps keys to values for highly efficient lookup.",
		},
		{
			ID:       "default-08",
			Question: "What is an element?",
			Options: []string{
				"An element is a basic unit of a data structure.",
				"A queue",
				"An array",
				"A table",
			},
			Answer: "An element is a basic unit of a data structure.",
		},
		{
			ID:       "default-09",
			Question: "What are the use cases of the technique BackTracking?",
			Options: []string{
				"Solving puzzles and games (e.g., Sudoku, crossword puzzles).",
				"Generating all possible solutions to a problem (e.g., permutations, combinations).",
				"Undoing previous choices when a solution path fails (e.g., recursive backtracking in mazes).",
				"Exploring all configurations in constraint satisfaction problems (e.g., scheduling, resource allocation).",
			},
			Answer: "Solving puzzles and games (e.g., Sudoku, crossword puzzles).",
		},
		{
			ID:       "default-10",
			Question: "What is an Operating System?",
			Options: []string{
				"An operating system is a program that manages computer hardware and software resources, providing common services for computer programs.",
				"A System that is responsible for managing computer hardware and software resources, providing common services for computer programs.",
				"A System that works on the basis of managing computer hardware and software resources, providing common services for computer programs.",
				"An Operating system is an intermediary between user of a computer and computer hardware.",
			},
			Answer: "An operating system is a program that manages computer hardware and software resources, providing common services for computer programs.",
		},
		{
			ID:       "default-11",
			Question: "What is nuclear physics?",
			Options: []string{
				"The study of the structure and behavior of the nucleus of an atom.",
				"The study of the behavior of subatomic particles.",
				"The study of the behavior of electrons.",
				"The study of the behavior of protons.",
			},
			Answer: "The study of the structure and behavior of the nucleus of an atom.",
		},
		{
			ID:       "default-12",
			Question: "What is quantum physics?",
			Options: []string{
				"The study of the behavior of subatomic particles.",
				"The study of the behavior of electrons.",
				"The study of the behavior of protons.",
				"The study of the behavior of electrons and protons.",
			},
			Answer: "The study of the behavior of subatomic particles.",
		},
	}
}
