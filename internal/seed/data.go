package seed

type sampleUser struct {
	Username string
	Email    string
	Role     string
}

type sampleMovie struct {
	Creator  string
	Title    string
	Poster   string
	Director string
	Producer string
	Singer   string
	Hero     string
	Heroine  string
	Total    int64
	Invested int64
	Price    int64
}

const samplePassword = "password"

var sampleUsers = []sampleUser{
	{Username: "investor1", Email: "investor@test.com", Role: "investor"},
	{Username: "creator1", Email: "creator@test.com", Role: "creator"},
	{Username: "creator2", Email: "creator2@test.com", Role: "creator"},
}

const pexels = "https://images.pexels.com/photos/"

var sampleMovies = []sampleMovie{
	{
		Creator: "creator1", Title: "Epic Adventure", Poster: pexels + "436413/pexels-photo-436413.jpeg",
		Director: "John Director", Producer: "Jane Producer", Singer: "Music Maestro",
		Hero: "Action Star", Heroine: "Lead Actress",
		Total: 1_000_000, Invested: 350_000, Price: 100,
	},
	{
		Creator: "creator2", Title: "Romantic Drama", Poster: pexels + "274937/pexels-photo-274937.jpeg",
		Director: "Sarah Director", Producer: "Mike Producer", Singer: "Melody Singer",
		Hero: "Romantic Lead", Heroine: "Drama Queen",
		Total: 750_000, Invested: 200_000, Price: 75,
	},
	{
		Creator: "creator1", Title: "The Last Horizon", Poster: pexels + "2510428/pexels-photo-2510428.jpeg",
		Director: "Sarah Johnson", Producer: "Michael Roberts",
		Total: 2_500_000, Invested: 1_750_000, Price: 100,
	},
	{
		Creator: "creator1", Title: "Whispers of the Heart", Poster: pexels + "3062541/pexels-photo-3062541.jpeg",
		Director: "Robert Zhang", Producer: "Sophia Davis",
		Total: 1_200_000, Invested: 850_000, Price: 80,
	},
	{
		Creator: "creator1", Title: "Shadows of Truth", Poster: pexels + "2873486/pexels-photo-2873486.jpeg",
		Director: "Thomas Miller", Producer: "Jennifer Brown",
		Total: 1_800_000, Invested: 450_000, Price: 70,
	},
	{
		Creator: "creator1", Title: "Beyond the Mountains", Poster: pexels + "1366957/pexels-photo-1366957.jpeg",
		Director: "Alex Turner", Producer: "Lisa Rodriguez",
		Total: 3_000_000, Invested: 2_100_000, Price: 120,
	},
	{
		Creator: "creator1", Title: "The Forgotten Symphony", Poster: pexels + "2777898/pexels-photo-2777898.jpeg",
		Director: "Elizabeth Parker", Producer: "William Harris",
		Total: 1_500_000, Invested: 900_000, Price: 90,
	},
	{
		Creator: "creator1", Title: "City of Dreams", Poster: pexels + "3052361/pexels-photo-3052361.jpeg",
		Director: "Mark Wilson", Producer: "Jessica Moore",
		Total: 2_200_000, Invested: 1_200_000, Price: 85,
	},
	{
		Creator: "creator1", Title: "The Last Guardian", Poster: pexels + "6447217/pexels-photo-6447217.jpeg",
		Director: "David Scott", Producer: "Laura Thomas",
		Total: 4_000_000, Invested: 1_500_000, Price: 150,
	},
	{
		Creator: "creator1", Title: "Echoes of Yesterday", Poster: pexels + "2559941/pexels-photo-2559941.jpeg",
		Director: "Patricia Nelson", Producer: "George Mitchell",
		Total: 2_800_000, Invested: 1_900_000, Price: 110,
	},
}
