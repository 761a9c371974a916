package constant

// Response copy shown to the client. The product surface is Polish.
const (
	WelcomeMessage = "Cześć! Jestem twoim asystentem do wyszukiwania złotych rączek. Powiedz mi, jakiego specjalistę szukasz i w jakiej lokalizacji?"

	ShortInputResponse = "Potrzebuję więcej informacji. Jakiego specjalistę szukasz i w jakim mieście/dzielnicy?"

	NoResultsResponse = "Nie znalazłem żadnych specjalistów pasujących do twojego zapytania. Możesz spróbować inaczej sformułować pytanie?"

	ResultsFoundResponse = "Oto wyniki wyszukiwania, które mogą Ci pomóc:"

	SearchErrorResponse = "Przepraszam, wystąpił błąd podczas wyszukiwania. Spróbuj ponownie później."

	TimeoutResponse = "Przepraszam, asystent nie odpowiedział na czas. Spróbuj ponownie później."
)

// API error messages (public contract).
const (
	ErrInvalidRequest   = "Nieprawidłowe żądanie"
	ErrMissingSessionID = "Brak identyfikatora sesji"
	ErrMissingMessage   = "Brak wiadomości"
	ErrSessionNotFound  = "Sesja nie istnieje"
	ErrInternal         = "Wystąpił błąd podczas przetwarzania wiadomości"
)

// SearchKeywords is appended to every user query before it reaches the
// search provider to bias results toward local handyman listings.
const SearchKeywords = "złota rączka fachowiec"
