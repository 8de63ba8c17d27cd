package models

// Asset processing states reported by the AI backend.
const (
	AssetProcessing = "PROCESSING"
	AssetActive     = "ACTIVE"
	AssetFailed     = "FAILED"
)

// UploadedAsset is a remote reference to a file submitted to the AI backend.
// Created on submission, transitions PROCESSING→ACTIVE via polling, consumed
// exactly once by the generation request, then discarded.
type UploadedAsset struct {
	LocalPath   string `json:"local_path"`
	MimeType    string `json:"mime_type"`
	RemoteName  string `json:"remote_name"`
	RemoteURI   string `json:"remote_uri"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
}
