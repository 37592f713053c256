package battle

// candidate is a usable ability together with its slot index.
type candidate struct {
	index   int
	ability Ability
}

// ChooseAbility picks an ability index for side using the AI policy:
//
//  1. Only abilities that are off cooldown, affordable and within the allowed
//     tier are candidates. No candidates means no usable ability.
//  2. Own HP below 30%: the first heal, otherwise the hardest hitter.
//  3. Opponent HP below 20%: the hardest-hitting damage ability, if any.
//  4. Otherwise a weighted random pick: damage 3, heal 2 while own HP is
//     below 70%, everything else 1.
func (b *Battle) ChooseAbility(side Side) (int, bool) {
	self := b.Combatant(side)
	opponent := b.Combatant(side.Opponent())

	candidates := usableAbilities(self)
	if len(candidates) == 0 {
		return 0, false
	}

	if below(self.GetHP(), self.GetMaxHP(), lowHealthFraction) {
		for _, c := range candidates {
			if c.ability.GetType() == AbilityHeal {
				return c.index, true
			}
		}
		return strongest(candidates).index, true
	}

	if below(opponent.GetHP(), opponent.GetMaxHP(), finishingHealthFraction) {
		var damaging []candidate
		for _, c := range candidates {
			if c.ability.GetType() == AbilityDamage {
				damaging = append(damaging, c)
			}
		}
		if len(damaging) > 0 {
			return strongest(damaging).index, true
		}
	}

	wantHeal := below(self.GetHP(), self.GetMaxHP(), healWantedFraction)
	weights := make([]float64, len(candidates))
	total := 0.0
	for i, c := range candidates {
		switch {
		case c.ability.GetType() == AbilityDamage:
			weights[i] = 3
		case c.ability.GetType() == AbilityHeal && wantHeal:
			weights[i] = 2
		default:
			weights[i] = 1
		}
		total += weights[i]
	}

	roll := b.rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if roll <= cumulative {
			return candidates[i].index, true
		}
	}
	return candidates[len(candidates)-1].index, true
}

// UsableAbilities returns the slot indices of c's abilities that are off
// cooldown, affordable and within its allowed tier. Unlike ChooseAbility it
// consumes no random rolls, so a multiplayer client can offer choices without
// moving the shared random sequence.
func UsableAbilities(c Combatant) []int {
	candidates := usableAbilities(c)
	out := make([]int, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.index
	}
	return out
}

func usableAbilities(c Combatant) []candidate {
	var out []candidate
	for i, ability := range c.GetAbilities() {
		if ability.IsOnCooldown() {
			continue
		}
		if ability.GetEnergyCost() > c.GetEnergy() {
			continue
		}
		if ability.GetTier() > c.GetAllowedTier() {
			continue
		}
		out = append(out, candidate{index: i, ability: ability})
	}
	return out
}

// strongest returns the candidate with the highest damage; ties keep the first.
func strongest(candidates []candidate) candidate {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.ability.GetDamage() > best.ability.GetDamage() {
			best = c
		}
	}
	return best
}

// below reports whether current < maximum*fraction.
func below(current, maximum int, fraction float64) bool {
	return float64(current) < float64(maximum)*fraction
}
