package summarize

import "summarybot/pkg/domain"

// System instruction templates, selected by output language.
const (
	systemPromptZhTW = "請將以下原始內容總結為五個部分，僅以純文字格式輸出，不使用 Markdown 語法或符號，整體語言使用繁體中文，結構需清楚、有條理。五個部分之間請用分隔線區隔。\n\n" +
		"⓵ 【容易懂 Easy Know】：使用簡單易懂、生活化的語言，將內容濃縮成一段約120～200字的說明，適合十二歲兒童理解。\n\n" +
		"⓶ 【總結 Overall Summary】：撰寫約300字以上的摘要，完整概括內容的主要議題、論點與結論。\n\n" +
		"⓷ 【觀點 Viewpoints】：列出內容中提到的3～7個主要觀點，每點以條列方式呈現，並可加入簡短評論。\n\n" +
		"⓸ 【摘要 Abstract】：列出6～10個關鍵重點句，每點簡短有力，前綴搭配合適的表情符號（如✅、⚠️、📌）。\n\n" +
		"⓹ 【關鍵字 Key Words】：整理出內容中的核心關鍵字或詞組（約5～10個）。\n"

	systemPromptEN = "Summarize the following content in five sections, output as plain text only " +
		"(no Markdown syntax), in clear and well-structured English. Separate the sections with divider lines.\n\n" +
		"1. Easy Know: condense the content into one 120-200 word explanation a twelve-year-old could follow.\n\n" +
		"2. Overall Summary: write 300+ words covering the main topics, arguments and conclusions.\n\n" +
		"3. Viewpoints: list 3-7 main viewpoints as bullet points, with brief commentary where useful.\n\n" +
		"4. Abstract: list 6-10 key takeaway sentences, short and punchy, prefixed with fitting emoji (e.g. ✅, ⚠️, 📌).\n\n" +
		"5. Key Words: list the 5-10 core keywords or phrases.\n"

	followUpPromptZhTW = "你是一個摘要助手。請根據先前提供的原始內容與摘要回答使用者的後續問題，使用繁體中文，簡潔明確。若問題超出內容範圍，請直接說明。"

	followUpPromptEN = "You are a summarization assistant. Answer the user's follow-up question based on the " +
		"previously provided content and summary. Be concise. If the question falls outside the content, say so."
)

// Fixed attribution lines appended after the keyword list.
const (
	attributionZhTW = "✡ 小濃縮 Summary Bot 為您濃縮重點 ✡"
	attributionEN   = "✡ Condensed for you by Summary Bot ✡"
)

func systemPrompt(lang domain.Language) string {
	if lang == domain.LangEN {
		return systemPromptEN
	}
	return systemPromptZhTW
}

func followUpPrompt(lang domain.Language) string {
	if lang == domain.LangEN {
		return followUpPromptEN
	}
	return followUpPromptZhTW
}

func attribution(lang domain.Language) string {
	if lang == domain.LangEN {
		return attributionEN
	}
	return attributionZhTW
}
