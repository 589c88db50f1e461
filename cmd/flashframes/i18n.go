// Package main provides localization for the flashframes CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Global":        "全般",
		"Output":        "出力先",
		"Sampling":      "サンプリング",
		"Cropping":      "切り抜き",
		"Box detection": "ボックス検出",
		"Logging":       "ログ",
		"Debug":         "デバッグ",

		// Root command
		"Extract video frames and crop regions for flashcards": "フラッシュカード用に動画のフレームを抽出し領域を切り抜く",
		"Error: %s":                                            "エラー: %s",
		"Interrupted, shutting down...":                        "中断されました。シャットダウン中...",

		// Global flags
		"YAML file with default settings":                                 "デフォルト設定を記述したYAMLファイル",
		"Path to the ffmpeg executable (ffprobe is looked up next to it)": "ffmpeg実行ファイルのパス（ffprobeは同じ場所から探します）",
		"Log level (debug, info, warn, error)":                            "ログレベル（debug, info, warn, error）",
		"Suppress all log output":                                         "すべてのログ出力を抑制",
		"Save intermediate images and metadata":                           "中間画像とメタデータを保存",
		"Directory for debug output":                                      "デバッグ出力用ディレクトリ",

		// Extract command
		"Extract frames from a video at a fixed interval":          "一定間隔で動画からフレームを抽出",
		"Directory for extracted frames (default: frames)":         "抽出したフレームの保存先（デフォルト: frames）",
		"Frame image format (png, jpg)":                            "フレーム画像の形式（png, jpg）",
		"JPEG quality 1-100 (default: 95)":                         "JPEG品質 1-100（デフォルト: 95）",
		"Write a Markdown summary of the run to this file":         "実行結果のMarkdownサマリーをこのファイルに書き出す",
		"Seconds between frames (default: 1.0)":                    "フレーム間の秒数（デフォルト: 1.0）",
		"First frame time in seconds":                              "最初のフレームの時刻（秒）",
		"Stop before this time in seconds (default: end of video)": "この時刻（秒）の手前で終了（デフォルト: 動画の終わり）",
		"Extract only the frame at this time in seconds":           "この時刻（秒）のフレームだけを抽出",
		"Crop every extracted frame":                               "抽出したすべてのフレームを切り抜く",
		"Output directory for cropped frames":                      "切り抜いたフレームの保存先",
		"extract needs exactly one video path":                     "extract には動画のパスを1つだけ指定してください",

		// Crop command
		"Crop a rectangle from an image":                                            "画像から矩形を切り抜く",
		"Output directory (default: \"cropped\" next to the image)":                 "出力先ディレクトリ（デフォルト: 画像と同じ場所の \"cropped\"）",
		"Crop rectangle as LEFT TOP RIGHT BOTTOM (four values, or comma-separated)": "切り抜き矩形 LEFT TOP RIGHT BOTTOM（4つの値、またはカンマ区切り）",
		"Detect boxes inside each crop and save them separately":                    "切り抜き内のボックスを検出して個別に保存",
		"Output directory for detected boxes":                                       "検出したボックスの保存先",
		"Minimum box area in pixels":                                                "ボックスの最小面積（ピクセル）",
		"Minimum box width in pixels":                                               "ボックスの最小幅（ピクセル）",
		"Minimum box height in pixels":                                              "ボックスの最小高さ（ピクセル）",
		"crop needs exactly one image path":                                         "crop には画像のパスを1つだけ指定してください",

		// Dedupe command
		"List visually similar images in a directory":               "ディレクトリ内の見た目が似ている画像を一覧表示",
		"Largest hash distance reported as similar (default: 5)":    "類似とみなすハッシュ距離の上限（デフォルト: 5）",
		"Hash grid size, a power of two of at least 8 (default: 8)": "ハッシュのグリッドサイズ、8以上の2の累乗（デフォルト: 8）",
		"dedupe needs exactly one directory":                        "dedupe にはディレクトリを1つだけ指定してください",
		"Similar images (difference: %d):":                          "類似画像（差分: %d）:",

		// Version command
		"Show version information": "バージョン情報を表示",
		"flashframes version %s":   "flashframes バージョン %s",
	})
}
