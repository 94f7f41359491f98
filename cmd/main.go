package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/LogiFrete/api-transportadora/internal/acerto"
	"github.com/LogiFrete/api-transportadora/internal/auth"
	"github.com/LogiFrete/api-transportadora/internal/despesa"
	"github.com/LogiFrete/api-transportadora/internal/motorista"
	"github.com/LogiFrete/api-transportadora/internal/receita"
	"github.com/LogiFrete/api-transportadora/internal/transportadora"
	"github.com/LogiFrete/api-transportadora/internal/usuario"
	"github.com/LogiFrete/api-transportadora/internal/utils/db"
	"github.com/LogiFrete/api-transportadora/internal/viagem"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
		&transportadora.Transportadora{},
		&motorista.Motorista{},
		&viagem.Viagem{},
		&receita.Receita{},
		&despesa.Despesa{},
		&acerto.Acerto{},
		&usuario.Usuario{},
	); err != nil {
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(database)
	transportadoraHandler := transportadora.NewHandler(database)
	motoristaHandler := motorista.NewHandler(database)
	viagemHandler := viagem.NewHandler(database)
	receitaHandler := receita.NewHandler(database)
	despesaHandler := despesa.NewHandler(database)
	acertoHandler := acerto.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas: login, cadastro e listagem de transportadoras
	r.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	r.HandleFunc("/auth/logout", usuarioHandler.Logout).Methods("POST")
	r.HandleFunc("/auth/registro", usuarioHandler.Registro).Methods("POST")
	r.HandleFunc("/transportadoras", transportadoraHandler.Criar).Methods("POST")
	r.HandleFunc("/transportadoras", transportadoraHandler.Listar).Methods("GET")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	api.HandleFunc("/auth/me", usuarioHandler.Me).Methods("GET")

	// Rotas de transportadoras
	api.HandleFunc("/transportadoras/{id}", transportadoraHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/transportadoras/{id}", transportadoraHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/transportadoras/{id}", transportadoraHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/transportadoras/{id}/resumo", transportadoraHandler.Resumo).Methods("GET")

	// Rotas de motoristas
	api.HandleFunc("/motoristas", motoristaHandler.Criar).Methods("POST")
	api.HandleFunc("/motoristas", motoristaHandler.Listar).Methods("GET")
	api.HandleFunc("/motoristas/{id}", motoristaHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/motoristas/{id}", motoristaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/motoristas/{id}", motoristaHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/motoristas/{id}/login", usuarioHandler.CriarLoginMotorista).Methods("POST")

	// Rotas de viagens
	api.HandleFunc("/viagens", viagemHandler.Criar).Methods("POST")
	api.HandleFunc("/viagens", viagemHandler.Listar).Methods("GET")
	api.HandleFunc("/viagens/{id}", viagemHandler.BuscarPorID).Methods("GET")
	api.HandleFunc("/viagens/{id}", viagemHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/viagens/{id}", viagemHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/viagens/{id}/status", viagemHandler.AtualizarStatus).Methods("PATCH")
	api.HandleFunc("/viagens/{id}/resumo", viagemHandler.Resumo).Methods("GET")

	// Rotas de receitas e despesas
	api.HandleFunc("/viagens/{id}/receitas", receitaHandler.CriarParaViagem).Methods("POST")
	api.HandleFunc("/viagens/{id}/receitas", receitaHandler.ListarPorViagem).Methods("GET")
	api.HandleFunc("/receitas/{id}", receitaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/receitas/{id}", receitaHandler.Deletar).Methods("DELETE")
	api.HandleFunc("/viagens/{id}/despesas", despesaHandler.CriarParaViagem).Methods("POST")
	api.HandleFunc("/viagens/{id}/despesas", despesaHandler.ListarPorViagem).Methods("GET")
	api.HandleFunc("/despesas/{id}", despesaHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/despesas/{id}", despesaHandler.Deletar).Methods("DELETE")

	// Rotas de acertos
	api.HandleFunc("/viagens/{id}/acerto", acertoHandler.CriarParaViagem).Methods("POST")
	api.HandleFunc("/viagens/{id}/acerto", acertoHandler.BuscarPorViagem).Methods("GET")
	api.HandleFunc("/viagens/{id}/acerto/recalcular", acertoHandler.Recalcular).Methods("POST")
	api.HandleFunc("/acertos/{id}", acertoHandler.Atualizar).Methods("PUT")
	api.HandleFunc("/acertos/{id}", acertoHandler.Deletar).Methods("DELETE")

	// CORS
	origem := os.Getenv("FRONTEND_URL")
	if origem == "" {
		origem = "http://localhost:5173"
	}
	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{origem},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	// Inicia servidor
	fmt.Println("Servidor rodando em http://localhost:" + porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
