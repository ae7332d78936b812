package structurer

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an expert educational content formatter. Always return valid JSON."

// buildPrompt asks the model for a JSON object with a sections array of
// {title, content[], bullets?}.
func buildPrompt(topic, contextText, audience, contentType string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert educational content designer. Transform the following knowledge graph content into a well-structured educational document.\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %s\n", topic))
	sb.WriteString(fmt.Sprintf("Target Audience: %s\n", audience))
	sb.WriteString(fmt.Sprintf("Content Type: %s\n\n", contentType))
	sb.WriteString("Raw Content:\n")
	sb.WriteString(contextText)
	sb.WriteString("\n\n")
	sb.WriteString("Create sections such as an introduction, core concepts, detailed explanation, practical examples, key takeaways, and a summary, adapting as the material demands.\n\n")
	sb.WriteString("Requirements:\n")
	sb.WriteString(fmt.Sprintf("- Use clear, educational language appropriate for %s\n", audience))
	sb.WriteString("- Break complex ideas into digestible parts\n")
	sb.WriteString("- Include specific details from the content\n")
	sb.WriteString("- For each section, write 2-5 paragraphs of 2-4 sentences each\n")
	sb.WriteString("- Add bullets only where key points deserve highlighting\n\n")
	sb.WriteString("Return ONLY a valid JSON object with this exact structure:\n")
	sb.WriteString(`{"sections": [{"title": "Section Title", "content": ["Paragraph 1", "Paragraph 2"], "bullets": ["key point 1", "key point 2"]}]}`)
	return sb.String()
}
