package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexbotov/slots/internal/limits"
)

const msgNotANumber = "Invalid input. Enter a number."

// AskDeposit prompts until a positive whole amount within MaxDeposit is entered
func AskDeposit(ctx context.Context, p *Prompter, policy *limits.Policy, currency string) (int64, error) {
	for {
		input, err := p.Ask(ctx, "How much money would you like to deposit? "+currency)
		if err != nil {
			return 0, err
		}

		amount, err := policy.Deposit(input)
		switch {
		case err == nil:
			return amount, nil
		case errors.Is(err, limits.ErrNonPositive):
			p.Println("Amount must be greater than 0")
		case errors.Is(err, limits.ErrOutOfRange):
			p.Printf("Invalid input. Enter a number between 1 and %d.\n", policy.MaxDeposit)
		default:
			p.Println(msgNotANumber)
		}
	}
}

// AskLines prompts until a line count within the policy is entered
func AskLines(ctx context.Context, p *Prompter, policy *limits.Policy) (int, error) {
	prompt := fmt.Sprintf("Enter the number of lines to bet on (1 - %d): ", policy.MaxLines)
	for {
		input, err := p.Ask(ctx, prompt)
		if err != nil {
			return 0, err
		}

		lines, err := policy.Lines(input)
		switch {
		case err == nil:
			return lines, nil
		case errors.Is(err, limits.ErrOutOfRange):
			p.Printf("Invalid input. Enter a number between 1 and %d.\n", policy.MaxLines)
		default:
			p.Println(msgNotANumber)
		}
	}
}

// AskBet prompts for the per-line bet until one is in range and the total
// bet fits the balance. The line count is not asked again. onReject, if set,
// is called for every bet refused for lack of balance.
func AskBet(ctx context.Context, p *Prompter, policy *limits.Policy, currency string, lines int, balance int64,
	onReject func(bet, total int64)) (int64, int64, error) {
	prompt := fmt.Sprintf("What would you like to bet on each line? (%d - %d) ", policy.MinBet, policy.MaxBet)
	for {
		input, err := p.Ask(ctx, prompt)
		if err != nil {
			return 0, 0, err
		}

		bet, err := policy.Bet(input)
		if err != nil {
			if errors.Is(err, limits.ErrOutOfRange) {
				p.Printf("Invalid input. Enter a number between %d and %d.\n", policy.MinBet, policy.MaxBet)
			} else {
				p.Println(msgNotANumber)
			}
			continue
		}

		total, err := policy.Affordable(lines, bet, balance)
		if err != nil {
			p.Printf("You do not have enough balance to place this bet. Your current balance is %s%d\n", currency, balance)
			if onReject != nil {
				onReject(bet, int64(lines)*bet)
			}
			continue
		}
		return bet, total, nil
	}
}
