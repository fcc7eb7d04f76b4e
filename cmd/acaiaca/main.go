package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"acaiaca/internal/auth"
	"acaiaca/internal/catalog"
	"acaiaca/internal/config"
	"acaiaca/internal/logging"
	"acaiaca/internal/session"
	"acaiaca/internal/token"
	"acaiaca/internal/users"
)

const usage = `usage: acaiaca <command> [flags]

commands:
  login      -email -password -role
  register   -username -email -password -role [-state -city -phone -property -story]
  logout
  whoami
  session
  refresh
  update     -id [-username -email -state -city -phone -story]
  users
  farmers
  products   [-categoria -agricultor -search -limit]
`

type app struct {
	auth     *auth.Service
	users    *users.Store
	products *catalog.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	userStore, err := users.Load(cfg.UsersPath)
	if err != nil {
		log.Fatalf("load users fixture: %v", err)
	}
	productStore, err := catalog.Load(cfg.ProductsPath)
	if err != nil {
		log.Fatalf("load products fixture: %v", err)
	}
	sessions, err := session.Open(cfg.SessionPath)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	codec := token.NewCodec(cfg.TokenSecret)
	authSvc := auth.NewService(userStore, sessions, codec, logger)
	authSvc.RestoreSession()

	a := &app{auth: authSvc, users: userStore, products: productStore}

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		a.login(args)
	case "register":
		a.register(args)
	case "logout":
		a.auth.Logout()
		fmt.Println("sessão encerrada")
	case "whoami":
		a.whoami()
	case "session":
		a.session()
	case "refresh":
		a.refresh()
	case "update":
		a.update(args)
	case "users":
		printJSON(a.auth.AllUsers())
	case "farmers":
		printJSON(a.users.Farmers())
	case "products":
		a.listProducts(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func (a *app) login(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(users.RoleConsumidor), "agricultor or consumidor")
	fs.Parse(args)

	res := a.auth.Login(*email, *password, users.Role(*role))
	printJSON(res)
	if !res.Success {
		os.Exit(1)
	}
}

func (a *app) register(args []string) {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	reg := auth.Registration{}
	fs.StringVar(&reg.Username, "username", "", "display name")
	fs.StringVar(&reg.Email, "email", "", "account email")
	fs.StringVar(&reg.Password, "password", "", "account password")
	role := fs.String("role", string(users.RoleConsumidor), "agricultor or consumidor")
	fs.StringVar(&reg.State, "state", "", "state")
	fs.StringVar(&reg.City, "city", "", "city")
	fs.StringVar(&reg.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&reg.PropertyName, "property", "", "farm name (agricultor only)")
	fs.StringVar(&reg.FarmerStory, "story", "", "farmer story (agricultor only)")
	fs.Parse(args)
	reg.Role = users.Role(*role)

	res := a.auth.Register(reg)
	printJSON(res)
	if !res.Success {
		os.Exit(1)
	}
}

func (a *app) whoami() {
	u, ok := a.auth.CurrentUser()
	if !ok {
		fmt.Println("nenhum usuário autenticado")
		os.Exit(1)
	}
	printJSON(u)
}

func (a *app) session() {
	info, ok := a.auth.SessionInfo()
	if !ok {
		fmt.Println("nenhuma sessão ativa")
		os.Exit(1)
	}
	printJSON(info)
}

func (a *app) refresh() {
	tok, ok := a.auth.RefreshToken()
	if !ok {
		fmt.Println("nenhum usuário autenticado")
		os.Exit(1)
	}
	printJSON(map[string]string{"token": tok})
}

func (a *app) update(args []string) {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	id := fs.Int("id", 0, "user id")
	username := fs.String("username", "", "new display name")
	email := fs.String("email", "", "new email")
	state := fs.String("state", "", "new state")
	city := fs.String("city", "", "new city")
	phone := fs.String("phone", "", "new phone number")
	story := fs.String("story", "", "new farmer story")
	fs.Parse(args)

	var upd users.Updates
	if *username != "" {
		upd.Username = username
	}
	if *email != "" {
		upd.Email = email
	}
	if *state != "" {
		upd.State = state
	}
	if *city != "" {
		upd.City = city
	}
	if *phone != "" {
		upd.PhoneNumber = phone
	}
	if *story != "" {
		upd.FarmerStory = story
	}

	res := a.auth.UpdateUser(*id, upd)
	printJSON(res)
	if !res.Success {
		os.Exit(1)
	}
}

func (a *app) listProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	categoria := fs.String("categoria", "", "filter by category")
	agricultor := fs.Int("agricultor", 0, "filter by farmer id")
	search := fs.String("search", "", "filter by name or description")
	limit := fs.Int("limit", 0, "maximum results")
	fs.Parse(args)

	f := catalog.Filter{
		Categoria:    *categoria,
		AgricultorID: *agricultor,
		Search:       *search,
		Limit:        *limit,
	}
	printJSON(a.products.Listings(a.users, f))
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("encode output: %v", err)
	}
	fmt.Println(string(out))
}
