package ui

import "context"

type Interface interface {
	// GetInput doit renvoyer une URL YouTube ou un chemin de fichier non vide.
	// Implémentation terminale : priorité clipboard -> prompt
	GetInput(ctx context.Context) (string, error)

	// WaitForExit bloque jusqu'à ce qu'un signal d'annulation soit reçu via ctx (Ctrl+C).
	WaitForExit(ctx context.Context) error

	PrintInfo(ctx context.Context, s string)
	PrintError(ctx context.Context, s string)
}
