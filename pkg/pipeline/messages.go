package pipeline

import "summarybot/pkg/domain"

// UserMessage maps a failure category to the message shown to the user, in
// the session's output language. The message names what went wrong; internal
// detail stays in the logs.
func UserMessage(kind domain.ErrorKind, lang domain.Language) string {
	if lang == domain.LangEN {
		return userMessageEN(kind)
	}
	return userMessageZhTW(kind)
}

func userMessageZhTW(kind domain.ErrorKind) string {
	switch kind {
	case domain.ErrDownloadFailure:
		return "無法下載該頁面，請確認連結是否有效。"
	case domain.ErrExtractionEmpty:
		return "無法從該內容提取有效文字，請嘗試其他來源。"
	case domain.ErrNoCaptions:
		return "該影片沒有可用的字幕。"
	case domain.ErrTranscriptionService:
		return "語音轉文字服務暫時無法使用，請稍後再試。"
	case domain.ErrFeedNotFound:
		return "無法從該頁面提取 RSS feed。"
	case domain.ErrAudioAssetNotFound:
		return "該 podcast 的最新單集沒有可用的音訊檔。"
	case domain.ErrModelCallFailure:
		return "摘要生成失敗，請稍後再試。"
	default:
		return "處理過程發生錯誤，請稍後再試。"
	}
}

func userMessageEN(kind domain.ErrorKind) string {
	switch kind {
	case domain.ErrDownloadFailure:
		return "Could not download that page. Please check the link."
	case domain.ErrExtractionEmpty:
		return "Could not extract any usable text from that content. Please try another source."
	case domain.ErrNoCaptions:
		return "That video has no captions available."
	case domain.ErrTranscriptionService:
		return "The transcription service is temporarily unavailable. Please try again later."
	case domain.ErrFeedNotFound:
		return "Could not extract an RSS feed from that page."
	case domain.ErrAudioAssetNotFound:
		return "The latest episode of that podcast has no audio file."
	case domain.ErrModelCallFailure:
		return "Summary generation failed. Please try again later."
	default:
		return "Something went wrong while processing. Please try again later."
	}
}
