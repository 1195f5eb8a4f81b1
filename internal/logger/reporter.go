package logger

// LogError reports an operator-facing error. context names what the error
// is about (a path, a url, an environment) and help tells the operator what
// to do about it.
func (l *Logger) LogError(err error, context, help string) {
	l.Error().
		Err(err).
		Str("context", context).
		Str("help", help).
		Msg(err.Error())
}

// LogWarn reports a non-fatal problem such as a deprecated setting.
func (l *Logger) LogWarn(text, explanation, help string) {
	l.Warn().
		Str("explanation", explanation).
		Str("help", help).
		Msg(text)
}
