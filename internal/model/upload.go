package model

// File is one raw uploaded file. Name may carry a folder prefix
// ("MyChannel/views.csv") when the client uploaded a directory tree.
type File struct {
	Name string
	Data []byte
}

// UploadResult is the structured outcome of ingesting one upload batch.
// Folder-level failures land in Errors; ambiguity and naming mismatches in
// Warnings. Ingestion never halts the batch over a single bad folder.
type UploadResult struct {
	Channels []ChannelSeries `json:"channels"`
	Errors   []string        `json:"errors"`
	Warnings []string        `json:"warnings"`
}

// UploadChannelResult reports how many daily rows were written for a channel.
type UploadChannelResult struct {
	ChannelName  string `json:"channelName"`
	RowsUpserted int    `json:"rowsUpserted"`
}

// UploadResponse is the API response for POST /api/channels/upload.
type UploadResponse struct {
	Success  bool                  `json:"success"`
	Results  []UploadChannelResult `json:"results"`
	Errors   []string              `json:"errors"`
	Warnings []string              `json:"warnings"`
}
