package types

// S3ObjectInfo identifies an S3 object. Key is always the decoded key.
type S3ObjectInfo struct {
	Bucket string
	Key    string
}

type S3Record struct {
	S3 struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key string `json:"key"`
		} `json:"object"`
	} `json:"s3"`
}

// ObjectCreatedDetail is the detail of an EventBridge "Object Created" event.
type ObjectCreatedDetail struct {
	Bucket struct {
		Name string `json:"name"`
	} `json:"bucket"`
	Object struct {
		Key  string `json:"key"`
		Size int64  `json:"size"`
	} `json:"object"`
}

// RecordsDetail carries one or more S3 notification records in the event detail.
type RecordsDetail struct {
	Records []S3Record `json:"records"`
}
