package mockapi

import "github.com/xeipuuv/gojsonschema"

var (
	loginSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["email", "password"],
  "properties": {
    "email": {"type": "string", "format": "email"},
    "password": {"type": "string", "minLength": 1}
  }
}`)

	passwordSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["password"],
  "properties": {
    "password": {"type": "string", "minLength": 8, "maxLength": 20}
  }
}`)

	emailCheckSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["email"],
  "properties": {
    "email": {"type": "string", "format": "email"}
  }
}`)

	nicknameCheckSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["nickname"],
  "properties": {
    "nickname": {"type": "string", "minLength": 1, "maxLength": 10}
  }
}`)

	likeSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["userId"],
  "properties": {
    "userId": {"type": "integer", "minimum": 1}
  }
}`)

	newCommentSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["userId", "content"],
  "properties": {
    "userId": {"type": "integer", "minimum": 1},
    "content": {"type": "string", "minLength": 1}
  }
}`)

	commentUpdateSchemaLoader = gojsonschema.NewStringLoader(`{
  "type": "object",
  "required": ["content"],
  "properties": {
    "content": {"type": "string", "minLength": 1}
  }
}`)
)
