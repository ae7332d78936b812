package agent

import "strings"

// buildInstructions composes the system instruction for the workflow agent
// based on the requested output formats.
func buildInstructions(includePDF, includePPT bool) string {
	var formats []string
	if includePDF {
		formats = append(formats, "PDF")
	}
	if includePPT {
		formats = append(formats, "PowerPoint")
	}
	formatsStr := strings.Join(formats, " and ")
	if formatsStr == "" {
		formatsStr = "structured content"
	}

	var sb strings.Builder
	sb.WriteString("You are an expert educational content creator with access to a knowledge base and document generation tools. ")
	sb.WriteString("Your task is to generate rich, well-organized " + formatsStr + " from the user's requirements.\n\n")
	sb.WriteString("Process:\n")
	sb.WriteString("1. Analyze the request: identify the main topic, subtopics, and the target audience (usually students).\n")
	sb.WriteString("2. Query the knowledge base with query_knowledge_base for the main topics and key subtopics. Use mix mode. Limit yourself to 3-5 targeted queries.\n")
	sb.WriteString("3. Call structure_content ONCE with all gathered content to build well-organized sections with citations.\n")
	if includePDF {
		sb.WriteString("4. Call render_pdf with the title and the structured content JSON.\n")
	}
	if includePPT {
		sb.WriteString("5. Call render_ppt with the title and the structured content JSON.\n")
	}
	sb.WriteString("6. Reply with the generated file paths and a short summary of the topics covered, then stop.\n\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Do not repeat queries or regenerate files unless a tool reported an error.\n")
	sb.WriteString("- Always include the file paths returned by the render tools in your final reply.\n")
	sb.WriteString("- Once the requested files are generated you are done; return the results immediately.\n")
	return sb.String()
}
