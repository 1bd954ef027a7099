package monday

import "encoding/json"

type graphQLRequest struct {
	Query string `json:"query"`
}

// Monday returns ids as numbers in some API versions and strings in others;
// json.Number swallows both.

type workspaceDTO struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type boardDTO struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type itemDTO struct {
	ID           json.Number      `json:"id"`
	Name         string           `json:"name"`
	ColumnValues []columnValueDTO `json:"column_values"`
}

type columnValueDTO struct {
	ID    string  `json:"id"`
	Value *string `json:"value"`
}

type updateDTO struct {
	ID   json.Number `json:"id"`
	Body string      `json:"body"`
}
