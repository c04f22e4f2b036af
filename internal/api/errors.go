package api

import "errors"

// ErrTransport couvre toute défaillance réseau/HTTP côté backend :
// erreur de connexion, statut non-2xx (hors 401) ou disjoncteur ouvert.
var ErrTransport = errors.New("erreur de communication avec le serveur")
