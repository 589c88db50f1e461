package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Extracting frames from %s":                               "%s からフレームを抽出中",
		"Cropping %d frames to %s":                                "%d フレームを %s で切り抜き中",
		"Pipeline completed: %d frames, %d crops, %d boxes in %s": "パイプライン完了: %d フレーム, %d 切り抜き, %d ボックス (%s)",
		"Output saved to %s":                                      "出力を %s に保存しました",
		"Summary written to %s":                                   "サマリーを %s に書き出しました",

		// Extract stage
		"Video: %.2f s, %.2f fps, %d frames, %dx%d (%s)": "動画: %.2f 秒, %.2f fps, %d フレーム, %dx%d (%s)",
		"Extracting %d frames every %.2f s into %s":      "%d フレームを %.2f 秒ごとに %s へ抽出中",
		"Extracted %d frames...":                         "%d フレームを抽出...",
		"Extracted %d frames to %s":                      "%d フレームを %s に抽出しました",
		"Wrote %s":                                       "%s を書き込みました",

		// Probe
		"Box parsing failed, falling back to ffprobe: %s": "ボックス解析に失敗したため ffprobe を使用します: %s",

		// Crop stage
		"Cropping %s (%dx%d) to %s": "%s (%dx%d) を %s で切り抜き中",
		"Cropped %s -> %s (%dx%d)":  "%s を切り抜きました -> %s (%dx%d)",

		// Detect stage
		"Found %d boxes in %s":            "%d 個のボックスを検出しました (%s)",
		"Box %d: %dx%d at (%d, %d) -> %s": "ボックス %d: %dx%d 位置 (%d, %d) -> %s",

		// Dedupe stage
		"Scanned %d images, found %d similar pairs": "%d 枚の画像を調べ、%d 組の類似ペアを見つけました",

		// Warnings
		"Skipping %s: %v":                 "%s をスキップします: %v",
		"Failed to save debug output: %v": "デバッグ出力の保存に失敗しました: %v",
		"Failed to write summary: %s":     "サマリーの書き込みに失敗しました: %s",
	})
}
