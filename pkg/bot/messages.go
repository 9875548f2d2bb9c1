package bot

import "summarybot/pkg/domain"

// Fixed user-facing strings, localized to the chat's output language.

func startMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "I summarize text, URLs, PDFs and videos for you. Send me anything to get started, or /help for the command list."
	}
	return "我會幫你自動總結文字、網頁、PDF 和影片的內容。直接傳給我任何內容即可開始，或輸入 /help 查看指令列表。"
}

func helpMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "I can summarize text, URLs, PDFs and videos.\n" +
			"Send me any text, URL or PDF and I will summarize it.\n\n" +
			"Commands:\n" +
			"/start - Start the bot\n" +
			"/help - Show this help message\n" +
			"/clear - Forget the current conversation\n" +
			"/lang - Toggle output language (繁體中文 / English)\n" +
			"/yt2text <URL> - Convert a video to text\n" +
			"/yt2audio <URL> - Download a video's audio"
	}
	return "我可以總結文字、網頁、PDF 和影片。\n" +
		"請直接輸入 URL 或想要總結的文字或 PDF，無論是何種語言，我都會幫你自動總結。\n\n" +
		"可用指令：\n" +
		"/start - 啟動機器人\n" +
		"/help - 顯示此說明\n" +
		"/clear - 清除目前的對話內容\n" +
		"/lang - 切換輸出語言（繁體中文 / English）\n" +
		"/yt2text <URL> - 將影片轉為文字\n" +
		"/yt2audio <URL> - 下載影片的音訊"
}

func clearedMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "Conversation cleared."
	}
	return "對話內容已清除。"
}

func processingMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "Working on it..."
	}
	return "處理中，請稍候..."
}

// shortTextTitle heads a summary of pasted plain text, which has no page
// title of its own.
func shortTextTitle(lang domain.Language) string {
	if lang == domain.LangEN {
		return "Summary"
	}
	return "短文之摘要"
}

func usageMessage(command string, lang domain.Language) string {
	if lang == domain.LangEN {
		return "Please provide a video URL. Example: " + command + " <URL>"
	}
	return "請提供一個影片的 URL。例如：" + command + " <URL>"
}

func unsupportedDocumentMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "I can only summarize PDF documents."
	}
	return "目前僅支援 PDF 文件的摘要。"
}

func audioFailedMessage(lang domain.Language) string {
	if lang == domain.LangEN {
		return "Audio download or delivery failed. Please check the URL."
	}
	return "下載或傳送音訊失敗。請檢查輸入的 URL 是否正確。"
}
