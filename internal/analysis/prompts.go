package analysis

import (
	"fmt"
	"strings"
)

// clipText cuts text to at most limit runes.
func clipText(text string, limit int) string {
	if limit <= 0 {
		return text
	}
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit])
}

func documentPrompt(p *Profile, text, filename string) string {
	return fmt.Sprintf(`%s

Analyze this research paper and extract the following information as JSON.

Paper text: %q
Filename: %q

IMPORTANT JOURNAL ABBREVIATIONS FOR THIS RESEARCHER:
%s
Please respond with a JSON object containing:
{
  "title": "extracted or inferred title",
  "authors": ["author1", "author2"],
  "year": 2024,
  "venue": "journal or conference name",
  "summary": "2-3 sentence summary of key contributions",
  "keywords": ["keyword1", "keyword2", "keyword3", "keyword4", "keyword5"],
  "researchArea": "specific research theme such as 'Venture Capital Decision Making' or 'Entrepreneurial Cognition'"
}

Extract accurate information where possible. Use the filename only to disambiguate title, authors or year.

IMPORTANT: Respond ONLY with valid JSON. Do not include any other text.`,
		p.Intro(), clipText(text, MaxInputChars), filename, p.AbbreviationBlock())
}

func abstractPrompt(p *Profile, in AbstractInput) string {
	return fmt.Sprintf(`%s

Paper Details:
Title: %q
Authors: %q
Year: %d
Venue: %q
Abstract: %q
Original Keywords: %q

IMPORTANT JOURNAL ABBREVIATIONS FOR THIS RESEARCHER:
%s
Generate an enhanced summary and keywords based on the abstract. Create a SPECIFIC research area theme based on the main focus. Respond ONLY with valid JSON:

{
  "summary": "2-3 sentence summary highlighting key contributions and findings from the abstract",
  "keywords": ["5-8 relevant keywords extracted from the abstract"],
  "researchArea": "Specific research theme like 'Venture Capital Decision Making', 'Entrepreneurial Cognition', 'New Venture Creation' - NOT just '%s'"
}

BE CONSERVATIVE - only extract information actually present in the abstract.`,
		p.Intro(), in.Title, in.Authors, in.Year, in.Venue, clipText(in.Abstract, MaxInputChars), in.Keywords,
		p.AbbreviationBlock(), p.Field)
}

func reanalysisPrompt(p *Profile, text string) string {
	return fmt.Sprintf(`%s

Paper text: %q

IMPORTANT JOURNAL ABBREVIATIONS FOR THIS RESEARCHER:
%s
Create a SPECIFIC research area theme based on the main focus. Generate ONLY a summary and research area. Respond ONLY with valid JSON:

{
  "summary": "2-3 sentence summary highlighting key contributions and findings",
  "researchArea": "Specific research theme like 'Venture Capital Decision Making', 'Entrepreneurial Cognition', 'New Venture Creation'"
}

BE CONSERVATIVE - only extract information actually present in the text.`,
		p.Intro(), clipText(text, MaxInputChars), p.AbbreviationBlock())
}

func answerPrompt(in AnswerInput) string {
	var papers strings.Builder
	for i, pc := range in.Papers {
		if i > 0 {
			papers.WriteString("\n")
		}
		fmt.Fprintf(&papers, "Paper: %q (%d)\nAuthors: %s\nSummary: %s\nKeywords: %s\n",
			pc.Title, pc.Year, strings.Join(pc.Authors, ", "), pc.Summary, strings.Join(pc.Keywords, ", "))
	}
	if papers.Len() == 0 {
		papers.WriteString("No papers in the portfolio matched this question.\n")
	}

	count := "several"
	if in.PaperCount > 0 {
		count = fmt.Sprint(in.PaperCount)
	}
	themes := "various areas"
	themeCount := "multiple"
	if len(in.ThemeNames) > 0 {
		themes = strings.Join(in.ThemeNames, ", ")
		themeCount = fmt.Sprint(len(in.ThemeNames))
	}

	return fmt.Sprintf(`You are an AI assistant helping visitors explore a researcher's portfolio. Answer questions about their research based on the provided context.

RESEARCH PORTFOLIO CONTEXT:
The researcher has published %s papers across %s research themes including: %s.

RELEVANT PAPERS FOR THIS QUESTION:
%s
QUESTION: %q

Instructions:
- Answer based on the research papers provided above
- Be specific and reference actual papers when relevant
- If the question can't be answered from the available papers, say so honestly
- Keep responses conversational but informative
- If multiple papers are relevant, compare or synthesize their approaches

Provide a helpful, accurate response:`, count, themeCount, themes, papers.String(), in.Question)
}
