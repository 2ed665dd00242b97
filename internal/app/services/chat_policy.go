package services

// ChatPolicy pins the assistant behavior for a session. The version is stored
// on the session at creation so policy changes never rewrite old conversations.
type ChatPolicy struct {
	Version          string
	SystemPrompt     string
	ProhibitedTopics []string
}

// DefaultChatPolicy is the active policy for new sessions
var DefaultChatPolicy = ChatPolicy{
	Version: "v1",
	SystemPrompt: "Eres Chat Go, el asistente de UIS. Responde en un tono amigable," +
		" con explicaciones claras y orientadas a estudiantes universitarios." +
		" Sé breve, evita contenido ofensivo y recuerda derivar a profesionales" +
		" cuando el usuario solicite ayuda médica o psicológica.",
	ProhibitedTopics: []string{"violencia", "discurso de odio"},
}
