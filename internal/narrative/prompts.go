// internal/narrative/prompts.go
package narrative

import "fmt"

func summaryPrompt(name string) string {
	return fmt.Sprintf(`Write a concise summary of %s's basketball career and playing style.
Include their key strengths and notable achievements. Keep it under 200 words.`, name)
}

func comparisonPrompt(player1, player2 string) string {
	return fmt.Sprintf(`Compare the playing styles and careers of %s and %s.
Focus on their similarities and differences in terms of:
1. Playing style
2. Strengths and weaknesses
3. Career achievements
Keep the comparison balanced and objective. Limit to 300 words.`, player1, player2)
}
