package config

import (
	"github.com/farellandr/fyyur-trivia/internal/models"
	"gorm.io/gorm"
)

var triviaCategories = []string{
	"Science",
	"Art",
	"Geography",
	"History",
	"Entertainment",
	"Sports",
}

// Category ids follow the order above: 1 Science ... 6 Sports.
var triviaQuestions = []models.Question{
	{Question: "Whose autobiography is entitled 'I Know Why the Caged Bird Sings'?", Answer: "Maya Angelou", CategoryID: 4, Difficulty: 2},
	{Question: "What boxer's original name is Cassius Clay?", Answer: "Muhammad Ali", CategoryID: 4, Difficulty: 1},
	{Question: "What movie earned Tom Hanks his third straight Oscar nomination, in 1996?", Answer: "Apollo 13", CategoryID: 5, Difficulty: 4},
	{Question: "What actor did author Anne Rice first denounce, then praise in the role of her beloved Lestat?", Answer: "Tom Cruise", CategoryID: 5, Difficulty: 4},
	{Question: "What was the title of the 1990 fantasy directed by Tim Burton about a young man with multi-bladed appendages?", Answer: "Edward Scissorhands", CategoryID: 5, Difficulty: 3},
	{Question: "Which is the only team to play in every soccer World Cup tournament?", Answer: "Brazil", CategoryID: 6, Difficulty: 3},
	{Question: "Which country won the first ever soccer World Cup in 1930?", Answer: "Uruguay", CategoryID: 6, Difficulty: 4},
	{Question: "Who invented Peanut Butter?", Answer: "George Washington Carver", CategoryID: 4, Difficulty: 2},
	{Question: "What is the largest lake in Africa?", Answer: "Lake Victoria", CategoryID: 3, Difficulty: 2},
	{Question: "In which royal palace would you find the Hall of Mirrors?", Answer: "The Palace of Versailles", CategoryID: 3, Difficulty: 3},
	{Question: "The Taj Mahal is located in which Indian city?", Answer: "Agra", CategoryID: 3, Difficulty: 2},
	{Question: "Which Dutch graphic artist-initials M C was a creator of optical illusions?", Answer: "Escher", CategoryID: 2, Difficulty: 1},
	{Question: "La Giaconda is better known as what?", Answer: "Mona Lisa", CategoryID: 2, Difficulty: 3},
	{Question: "How many paintings did Van Gogh sell in his lifetime?", Answer: "One", CategoryID: 2, Difficulty: 4},
	{Question: "Which American artist was a pioneer of Abstract Expressionism, and a leading exponent of action painting?", Answer: "Jackson Pollock", CategoryID: 2, Difficulty: 2},
	{Question: "What is the heaviest organ in the human body?", Answer: "The Liver", CategoryID: 1, Difficulty: 4},
	{Question: "Who discovered penicillin?", Answer: "Alexander Fleming", CategoryID: 1, Difficulty: 3},
	{Question: "Hematology is a branch of medicine involving the study of what?", Answer: "Blood", CategoryID: 1, Difficulty: 4},
	{Question: "Which dung beetle was worshipped by the ancient Egyptians?", Answer: "Scarab", CategoryID: 4, Difficulty: 4},
}

// SeedTrivia creates the fixed categories when missing and, if withQuestions
// is set, loads the starter question set into an empty questions table.
func SeedTrivia(db *gorm.DB, withQuestions bool) error {
	for i, name := range triviaCategories {
		category := models.Category{ID: uint(i + 1), Type: name}
		if err := db.Where("type = ?", name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}

	if !withQuestions {
		return nil
	}

	var count int64
	if err := db.Model(&models.Question{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	questions := make([]models.Question, len(triviaQuestions))
	copy(questions, triviaQuestions)
	return db.Create(&questions).Error
}
