package summarizer

const digestPrompt = `You are a tech news editor writing a daily digest for a Slack channel.

Below are the current headlines from Techmeme, each followed by a link to the story.

Pick the top 10 most important stories and write them as a bulleted list:
- Start each bullet with one emoji that fits the story's topic.
- Put the story title in bold using single asterisks, like *Title*. Never use double asterisks.
- Follow the title with a summary of 1-2 sentences.
- End each bullet with the link to the source article.

Headlines:
`

// BuildPrompt appends the rendered headline listing to the fixed digest
// instructions.
func BuildPrompt(listing string) string {
	return digestPrompt + listing
}
