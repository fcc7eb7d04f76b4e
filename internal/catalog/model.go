package catalog

// Product mirrors one entry of the produtos fixture. Field names follow the
// dataset's Portuguese keys.
type Product struct {
	ID           int     `json:"id" yaml:"id"`
	Nome         string  `json:"nome" yaml:"nome"`
	Preco        float64 `json:"preco" yaml:"preco"`
	Descricao    string  `json:"descricao" yaml:"descricao"`
	Categoria    string  `json:"categoria" yaml:"categoria"`
	Quantidade   int     `json:"quantidade" yaml:"quantidade"`
	Imagem       string  `json:"imagem" yaml:"imagem"`
	AgricultorID int     `json:"agricultorId" yaml:"agricultorId"`
}

// FarmerProfile is the public slice of a farmer's account attached to each
// listed product.
type FarmerProfile struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PropertyName string `json:"propertyName"`
	CityName     string `json:"cityName"`
	StateName    string `json:"stateName"`
	PhoneNumber  string `json:"phoneNumber"`
	ImageProfile string `json:"imageProfile"`
}

// Listing is a product joined to its farmer. Agricultor is nil when the
// product's farmer id does not resolve.
type Listing struct {
	Product
	Agricultor *FarmerProfile `json:"agricultor"`
}

type Filter struct {
	Categoria    string
	AgricultorID int
	Search       string
	Limit        int
}
