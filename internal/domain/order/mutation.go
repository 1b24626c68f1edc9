package order

// NextPriority is max(priority over orders, 0) + 1.
func NextPriority(orders []Order) int {
	highest := 0
	for _, o := range orders {
		if o.Priority > highest {
			highest = o.Priority
		}
	}
	return highest + 1
}

// SetHighPriority returns a copy of orders where only the target's priority
// is raised to NextPriority(orders). The boosted order outranks every order
// known at this point; two clients boosting from the same stale snapshot can
// still end up with equal priorities.
func SetHighPriority(orders []Order, id string) ([]Order, int, error) {
	idx := indexOf(orders, id)
	if idx < 0 {
		return nil, 0, ErrNotFound
	}
	p := NextPriority(orders)
	out := cloneOrders(orders)
	out[idx].Priority = p
	return out, p, nil
}

// UpdateStatus returns a copy of orders with the target's status replaced.
// Any status may follow any other; operators can revert a mark.
func UpdateStatus(orders []Order, id string, status Status) ([]Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	idx := indexOf(orders, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	out := cloneOrders(orders)
	out[idx].Status = status
	return out, nil
}
