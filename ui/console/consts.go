package console

// Default terminal width in characters.
const defaultTermWidth = 80
