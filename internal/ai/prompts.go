package ai

import (
	"fmt"
	"strings"
)

// Source text is capped before prompting to stay inside model context
// limits.
const maxSourceChars = 10000

func buildSystemPrompt(numSlides int) string {
	return fmt.Sprintf(`You are an expert presentation creator. Your task is to create a well-structured presentation
from the provided text content. Extract the key points and organize them into a cohesive presentation.

Create a presentation with the following:
1. A title slide with an engaging title (if not provided) and subtitle
2. %d content slides

Structure the presentation logically and extract the most important information.`, numSlides-1)
}

func buildUserPrompt(text, titleOverride string) string {
	if len(text) > maxSourceChars {
		text = text[:maxSourceChars]
	}

	var prompt strings.Builder
	prompt.WriteString("Create a presentation based on the following content:\n\n")
	prompt.WriteString(text)
	prompt.WriteString(`

Please structure your response in JSON format with the following structure:
{
    "title": "Main Title of Presentation",
    "slides": [
        {
            "type": "title",
            "title": "Presentation Title",
            "content": "Subtitle - e.g. Author's Name"
        },
        {
            "type": "bullet_points",
            "title": "Key Point 1",
            "bullet_points": ["Point 1", "Point 2", "Point 3"]
        }
    ]
}

Ensure all slide content is concise and impactful. Use different slide types appropriately:
- title: For title slides with a subtitle
- content: For slides with paragraphs of text
- bullet_points: For key points in a list format
- two_column: For comparing information side by side (fields column1 and column2)

Respond with JSON only, no surrounding prose.`)

	if titleOverride != "" {
		prompt.WriteString(fmt.Sprintf("\nUse '%s' as the presentation title.", titleOverride))
	}

	return prompt.String()
}
