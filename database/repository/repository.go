package repository

import (
	itineraryRepo "gochinamed/database/repository/itinerary"
	orderRepo "gochinamed/database/repository/order"
	userRepo "gochinamed/database/repository/user"
)

// Re-export the OrderRepository interface and constructor.
type OrderRepository = orderRepo.OrderRepository

var NewMongoOrderRepo = orderRepo.NewMongoOrderRepo

// Re-export the ItineraryRepository interface and constructor.
type ItineraryRepository = itineraryRepo.ItineraryRepository

var NewMongoItineraryRepo = itineraryRepo.NewMongoItineraryRepo

// Re-export the UserRepository interface and constructor.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepository = userRepo.NewMongoUserRepo
